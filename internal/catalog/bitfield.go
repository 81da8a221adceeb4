package catalog

// DecodeByte describes b using fields. Each field is tested independently and
// in order; a masked value with no entry contributes nothing.
func DecodeByte(b byte, fields ByteFieldSet) []string {
	var out []string
	for _, f := range fields {
		if desc, ok := f.Values[b&f.Mask]; ok {
			out = append(out, desc)
		}
	}
	return out
}
