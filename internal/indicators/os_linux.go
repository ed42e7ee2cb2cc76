package indicators

// NewOSReader returns a reader for the machine's keyboard LEDs.
func NewOSReader() (Reader, error) {
	return NewSysfsReader(DefaultLEDDir)
}
