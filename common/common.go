package common

// TigerVersion is the current tigerc version as a string.
const TigerVersion string = "0.1.0"

// ProfileFileName is the name of build profile files.
const ProfileFileName string = "tigerc.toml"

// ASTFileExt is the file extension of an AST interchange file.
const ASTFileExt string = ".json"

// IRFileExt is the file extension of a generated LLVM IR file.
const IRFileExt string = ".ll"
