package catalog

var builtin = New(map[Protocol]map[byte]*RegisterDefinition{
	ProtocolSCDC: scdcRegisters(),
	ProtocolHDCP: hdcpRegisters(),
})

// Default returns the built-in catalog. It is shared, never modify it.
func Default() *Catalog {
	return builtin
}
