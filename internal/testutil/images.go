// internal/testutil/images.go
package testutil

// JPEG returns a payload that content sniffing recognises as image/jpeg; tag makes it unique.
func JPEG(tag string) []byte {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	return append(data, []byte(tag)...)
}

// PNG returns a payload that content sniffing recognises as image/png; tag makes it unique.
func PNG(tag string) []byte {
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	return append(data, []byte(tag)...)
}
