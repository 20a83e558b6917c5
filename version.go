package bitseq

// Version is the library version, consumed by packaging and SysInfo.
const Version = "1.0.0"
