package section

// wordsFromSigned reinterprets signed 64-bit packed words (the storage
// shape of a long-array tag) as their unsigned bit pattern. All bit
// extraction below operates on the unsigned pattern; the source never
// stores packed arrays any other way.
func wordsFromSigned(data []int64) []uint64 {
	if data == nil {
		return nil
	}
	words := make([]uint64, len(data))
	for i, d := range data {
		words[i] = uint64(d)
	}
	return words
}

func blocksPerWord(bitWidth uint8) int {
	return 64 / int(bitWidth)
}

// alignedWordCount is the expected packed-array length when each word
// holds a whole number of fixed-width slots; the high bits left over in each
// word (64 mod bitWidth of them) are unused, and so are any trailing slots
// of the last word.
func alignedWordCount(count int, bitWidth uint8) int {
	perWord := blocksPerWord(bitWidth)
	return (count + perWord - 1) / perWord
}

// unalignedWordCount is the expected packed-array length when indices form
// a contiguous bitstream that may straddle word boundaries.
func unalignedWordCount(count int, bitWidth uint8) int {
	return (count*int(bitWidth) + 63) / 64
}

func alignedIndexAt(words []uint64, bitWidth uint8, off int) uint32 {
	perWord := blocksPerWord(bitWidth)
	word := off / perWord
	shift := uint(off%perWord) * uint(bitWidth)
	mask := uint64(1)<<bitWidth - 1
	return uint32((words[word] >> shift) & mask)
}

func unalignedIndexAt(words []uint64, bitWidth uint8, off int) uint32 {
	bit := off * int(bitWidth)
	word, sh := bit/64, uint(bit%64)
	mask := uint64(1)<<bitWidth - 1

	v := words[word] >> sh
	if sh+uint(bitWidth) > 64 {
		v |= words[word+1] << (64 - sh)
	}
	return uint32(v & mask)
}

// nibbleAt reads one 4-bit value out of a byte array laid out two values
// per byte, low nibble first. Used for both the v0 "Data" array and block
// light.
func nibbleAt(data []byte, off int) uint8 {
	byteOff, nibble := off/2, off%2
	b := data[byteOff]
	if nibble == 1 {
		return b >> 4
	}
	return b & 0x0F
}
