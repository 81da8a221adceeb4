package catalog

// HDCP registers on the 0x74/0x75 device are recognized by address only.
// The table is empty until field decoding is added; lookups miss.
func hdcpRegisters() map[byte]*RegisterDefinition {
	return map[byte]*RegisterDefinition{}
}
