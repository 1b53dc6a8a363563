package utils

import (
	"io"
	"os"
)

// sniffLength defines the maximum number of bytes read when detecting binary content.
const sniffLength = 8000

// textCharacters marks every byte value that may appear in a text file:
// BEL, BS, TAB, LF, FF, CR, ESC and everything from 0x20 upwards except DEL.
var textCharacters = buildTextCharacterTable()

func buildTextCharacterTable() [256]bool {
	var table [256]bool
	for _, controlByte := range []byte{0x07, 0x08, 0x09, 0x0A, 0x0C, 0x0D, 0x1B} {
		table[controlByte] = true
	}
	for byteValue := 0x20; byteValue <= 0xFF; byteValue++ {
		table[byteValue] = true
	}
	table[0x7F] = false
	return table
}

// IsBinary reports whether the provided byte slice contains a byte outside the text allow-list.
func IsBinary(data []byte) bool {
	for _, byteValue := range data {
		if !textCharacters[byteValue] {
			return true
		}
	}
	return false
}

// IsFileBinary reads up to sniffLength bytes from the file at path and determines
// if the content appears to be binary. Unreadable files are reported as binary.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return true
	}
	return IsBinary(buffer[:bytesRead])
}
