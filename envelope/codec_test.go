package envelope

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opd-ai/signeddata/crypto"
)

func testKeyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.FromSeed(crypto.PrivateKey{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("FromSeed() error: %v", err)
	}
	return kp
}

// signedText assembles a complete signed envelope around a valid prefix,
// using a fixed signature string. Codec tests only care about framing.
func signedText(t *testing.T, payload []byte, ts, exp *float64, seq *SequenceNumber, dest *string) string {
	t.Helper()
	kp := testKeyPair(t)
	prefix := EncodePrefix(payload, kp.Public, ts, exp, seq, dest)

	var sig crypto.Signature
	for i := range sig {
		sig[i] = byte(i + 1)
	}
	return prefix + FieldSep + crypto.SignatureToString(sig)
}

func TestEncodePrefixExactLayout(t *testing.T) {
	kp := testKeyPair(t)
	pkStr := crypto.PublicKeyToString(kp.Public)

	got := EncodePrefix([]byte("launch"), kp.Public,
		floatPtr(5), nil, &SequenceNumber{Tag: "deploy", Counter: 0}, strPtr("node1:node2"))

	want := "launch\n!" + pkStr + "!5!None!deploy:0!node1:node2"
	if got != want {
		t.Errorf("EncodePrefix() = %q, want %q", got, want)
	}
}

func TestDecodeSignedRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		ts      *float64
		exp     *float64
		seq     *SequenceNumber
		dest    *string
	}{
		{
			name:    "All fields set",
			payload: []byte("launch"),
			ts:      floatPtr(5),
			exp:     floatPtr(1000),
			seq:     &SequenceNumber{Tag: "deploy", Counter: 3},
			dest:    strPtr("node1:node2"),
		},
		{
			name:    "All fields absent",
			payload: []byte("hello"),
		},
		{
			name:    "Payload with separators",
			payload: []byte("a!b!c\nd!e"),
			ts:      floatPtr(-2.5),
		},
		{
			name:    "Empty payload",
			payload: []byte(""),
			seq:     &SequenceNumber{Tag: "", Counter: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := signedText(t, tc.payload, tc.ts, tc.exp, tc.seq, tc.dest)

			env, err := DecodeSigned(text)
			if err != nil {
				t.Fatalf("DecodeSigned() error: %v", err)
			}

			if !bytes.Equal(env.Payload, tc.payload) {
				t.Errorf("Payload = %q, want %q", env.Payload, tc.payload)
			}
			if env.PublicKey != testKeyPair(t).Public {
				t.Error("Public key did not round trip")
			}
			checkFloat(t, "Timestamp", env.Timestamp, tc.ts)
			checkFloat(t, "Expiration", env.Expiration, tc.exp)
			if (env.Sequence == nil) != (tc.seq == nil) {
				t.Errorf("Sequence presence = %v, want %v", env.Sequence != nil, tc.seq != nil)
			} else if env.Sequence != nil && *env.Sequence != *tc.seq {
				t.Errorf("Sequence = %+v, want %+v", *env.Sequence, *tc.seq)
			}
			if (env.Destination == nil) != (tc.dest == nil) {
				t.Errorf("Destination presence = %v, want %v", env.Destination != nil, tc.dest != nil)
			} else if env.Destination != nil && *env.Destination != *tc.dest {
				t.Errorf("Destination = %q, want %q", *env.Destination, *tc.dest)
			}
			if env.Signature == "" {
				t.Error("Signature missing from decoded envelope")
			}
		})
	}
}

func checkFloat(t *testing.T, field string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s presence = %v, want %v", field, got != nil, want != nil)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}

func TestDecodeSignedMalformed(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{name: "Empty", text: ""},
		{name: "Plain text", text: "just some text"},
		{name: "Too few fields", text: "data\n!pk!ts!exp!seq"},
		{name: "No record terminator", text: "data!pk!5!None!None!None!sig"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSigned(tc.text)
			if !errors.Is(err, ErrMalformedMessage) {
				t.Errorf("DecodeSigned(%q) error = %v, want ErrMalformedMessage", tc.text, err)
			}
		})
	}
}

func TestDecodeSignedBadSequence(t *testing.T) {
	kp := testKeyPair(t)
	pkStr := crypto.PublicKeyToString(kp.Public)
	text := "data\n!" + pkStr + "!5!None!not-a-sequence!None!sig"

	_, err := DecodeSigned(text)
	if !errors.Is(err, ErrInvalidSequenceNumber) {
		t.Errorf("DecodeSigned() error = %v, want ErrInvalidSequenceNumber", err)
	}
}

func TestSplitSignature(t *testing.T) {
	text := signedText(t, []byte("launch"), floatPtr(5), nil, nil, nil)

	payload, trailer, err := SplitSignature(text)
	if err != nil {
		t.Fatalf("SplitSignature() error: %v", err)
	}
	if payload != "launch" {
		t.Errorf("Payload = %q, want %q", payload, "launch")
	}
	if !strings.HasPrefix(trailer, FieldSep) {
		t.Errorf("Trailer %q does not start with %q", trailer, FieldSep)
	}
	if payload+RecordTerm+trailer != text {
		t.Error("SplitSignature() parts do not reassemble into the original text")
	}
}

func TestSplitSignatureNoTerminator(t *testing.T) {
	_, _, err := SplitSignature("no terminator here")
	if !errors.Is(err, ErrMalformedMessage) {
		t.Errorf("SplitSignature() error = %v, want ErrMalformedMessage", err)
	}
}

func TestDecodeTrailer(t *testing.T) {
	seq := &SequenceNumber{Tag: "deploy", Counter: 4}
	text := signedText(t, []byte("launch"), floatPtr(9), floatPtr(100), seq, strPtr("node1"))

	_, trailer, err := SplitSignature(text)
	if err != nil {
		t.Fatalf("SplitSignature() error: %v", err)
	}

	env, err := DecodeTrailer(trailer)
	if err != nil {
		t.Fatalf("DecodeTrailer() error: %v", err)
	}

	if env.Payload != nil {
		t.Error("DecodeTrailer() should not produce a payload")
	}
	if env.PublicKey != testKeyPair(t).Public {
		t.Error("Public key did not survive trailer decoding")
	}
	checkFloat(t, "Timestamp", env.Timestamp, floatPtr(9))
	checkFloat(t, "Expiration", env.Expiration, floatPtr(100))
	if env.Sequence == nil || *env.Sequence != *seq {
		t.Errorf("Sequence = %v, want %+v", env.Sequence, *seq)
	}
	if env.Destination == nil || *env.Destination != "node1" {
		t.Errorf("Destination = %v, want node1", env.Destination)
	}
}

func TestDecodeTrailerMalformed(t *testing.T) {
	for _, trailer := range []string{"", "!pk!only!three", "pk!5!None!None!None!sig"} {
		if _, err := DecodeTrailer(trailer); !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("DecodeTrailer(%q) error = %v, want ErrMalformedMessage", trailer, err)
		}
	}
}

func TestSplitSigned(t *testing.T) {
	kp := testKeyPair(t)
	text := signedText(t, []byte("launch"), floatPtr(5), nil, nil, nil)

	prefix, pubkeyRaw, sigRaw, ok := SplitSigned(text)
	if !ok {
		t.Fatal("SplitSigned() failed on valid text")
	}
	if prefix+FieldSep+sigRaw != text {
		t.Error("SplitSigned() prefix and signature do not reassemble the text")
	}
	if pubkeyRaw != crypto.PublicKeyToString(kp.Public) {
		t.Errorf("Embedded key = %q, want the signer's key string", pubkeyRaw)
	}

	if _, _, _, ok := SplitSigned("too!few!fields"); ok {
		t.Error("SplitSigned() accepted text with too few fields")
	}
}
