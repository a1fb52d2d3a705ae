package qcfile

import "github.com/vmihailenco/msgpack/v5"

// ParseMsgpack parses a session from the binary .qcs format.
func ParseMsgpack(data []byte) (*Session, error) {
	var f sessionFile
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return fromFile(f)
}

// ToMsgpack converts a session to the binary .qcs format.
func ToMsgpack(s *Session) ([]byte, error) {
	return msgpack.Marshal(toFile(s))
}
