package signeddata

import (
	"testing"

	"github.com/opd-ai/signeddata/envelope"
)

func TestVerifySoundness(t *testing.T) {
	keys := newKeys(t)

	signed, err := Sign([]byte("launch"), keys, SignOptions{
		Timestamp: floatPtr(5),
		Sequence:  &envelope.SequenceNumber{Tag: "deploy", Counter: 0},
	})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !Verify(signed, nil) {
		t.Error("Verify() without an expected key rejected a valid message")
	}
	if !Verify(signed, &keys.Public) {
		t.Error("Verify() with the signer's key rejected a valid message")
	}

	other := newKeys(t)
	if Verify(signed, &other.Public) {
		t.Error("Verify() accepted a message against a different expected key")
	}
}

func TestVerifyTamperedText(t *testing.T) {
	keys := newKeys(t)
	signed, err := Sign([]byte("the payload under protection"), keys, SignOptions{Timestamp: floatPtr(9)})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	// Flip a byte in the middle of the payload.
	raw := []byte(signed)
	raw[5] ^= 0x01
	if Verify(string(raw), &keys.Public) {
		t.Error("Verify() accepted text with a flipped payload byte")
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	keys := newKeys(t)

	cases := []struct {
		name string
		text string
	}{
		{name: "Empty", text: ""},
		{name: "Garbage", text: "not a signed message"},
		{name: "Too few fields", text: "data\n!a!b!c!d"},
		{name: "Bad key encoding", text: "data\n!@@@!5!None!None!None!sig"},
		{name: "Bad signature encoding", text: "data\n!pk!5!None!None!None!@@@"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Verify(tc.text, nil) {
				t.Errorf("Verify(%q) = true, want false", tc.text)
			}
			if Verify(tc.text, &keys.Public) {
				t.Errorf("Verify(%q) with expected key = true, want false", tc.text)
			}
		})
	}
}

func TestVerifySwappedSignature(t *testing.T) {
	keys := newKeys(t)

	first, err := Sign([]byte("message one"), keys, SignOptions{})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	second, err := Sign([]byte("message two"), keys, SignOptions{})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	// Graft the second message's signature onto the first prefix.
	firstPrefix, _, _, ok := envelope.SplitSigned(first)
	if !ok {
		t.Fatal("SplitSigned() failed on valid text")
	}
	_, _, secondSig, ok := envelope.SplitSigned(second)
	if !ok {
		t.Fatal("SplitSigned() failed on valid text")
	}

	grafted := firstPrefix + envelope.FieldSep + secondSig
	if Verify(grafted, &keys.Public) {
		t.Error("Verify() accepted a signature grafted from another message")
	}
}
