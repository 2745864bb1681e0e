package utility

import "encoding/binary"

func Concat[T any](arrays ...[]T) []T {
	result := []T{}
	for _, ele := range arrays {
		result = append(result, ele...)
	}
	return result
}

func UintToBytes(u uint64) []byte {
	intBuffer := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(intBuffer, u)
	return intBuffer[:n]
}

func IntToBytes(u int64) []byte {
	intBuffer := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(intBuffer, u)
	return intBuffer[:n]
}
