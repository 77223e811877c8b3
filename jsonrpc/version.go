package jsonrpc

// Version is the JSON-RPC protocol version
const Version = "2.0"
