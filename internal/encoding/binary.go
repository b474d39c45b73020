package encoding

// Split16 uint16 to two uint8 (high byte first)
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}
