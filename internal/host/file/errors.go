package file

// Operation names recorded on every errutil.Error from this package.
const (
	OpReadFile  = "readFile"
	OpWriteFile = "writeFile"
)
