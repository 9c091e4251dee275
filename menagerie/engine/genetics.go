package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// DNASize is the fixed width of every genetic code. The code is assigned at
// mint and never changes afterwards.
const DNASize = 16

// DNA is an opaque genetic code. All visual and gameplay traits derive from
// it exactly once, at mint time.
type DNA [DNASize]byte

// NewDNA derives the genetic code for a freshly minted creature. The inputs
// are all fixed at mint, so replaying the same mint always produces the same
// code.
func NewDNA(realm string, id int64, name, owner string) DNA {
	h := sha256.New()
	h.Write([]byte(realm))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	h.Write(buf[:])
	h.Write([]byte(name))
	h.Write([]byte(owner))

	var d DNA
	copy(d[:], h.Sum(nil))
	return d
}

// CombineDNA mixes two parent codes into a child code by byte-wise
// interleaving: even offsets come from the first parent, odd offsets from the
// second. The rule is fixed because trait inheritance depends on it.
func CombineDNA(a, b DNA) DNA {
	var child DNA
	for i := 0; i < DNASize; i++ {
		if i%2 == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

func (d DNA) String() string { return hex.EncodeToString(d[:]) }

// ParseDNA decodes the hex form produced by String.
func ParseDNA(s string) (DNA, error) {
	var d DNA
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("failed to parse dna: %w", err)
	}
	if len(raw) != DNASize {
		return d, fmt.Errorf("failed to parse dna: want %d bytes, got %d", DNASize, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// Element is the gameplay affinity encoded in a genetic code.
type Element uint8

const (
	ElementFire Element = iota
	ElementWater
	ElementEarth
	ElementAir
	ElementArcane
)

func (e Element) String() string {
	switch e {
	case ElementFire:
		return "Fire"
	case ElementWater:
		return "Water"
	case ElementEarth:
		return "Earth"
	case ElementAir:
		return "Air"
	case ElementArcane:
		return "Arcane"
	default:
		return "Unknown"
	}
}

// Traits are the attributes derived from a genetic code. They are computed
// once at mint and cached on the creature record.
type Traits struct {
	ColorHue int
	Pattern  int
	Element  Element
	Rarity   int
}

// DeriveTraits is a pure function over the genetic code. The byte windows
// match the hex-substring reads the display layer performs: bytes 0-2 for
// hue, 3-4 for pattern, 5 for element, 6-7 for rarity.
func DeriveTraits(d DNA) Traits {
	hue := (int(d[0])<<16 | int(d[1])<<8 | int(d[2])) % 360
	pattern := (int(d[3])<<8 | int(d[4])) % 5
	element := Element(d[5] % 5)
	rarity := (int(d[6])<<8 | int(d[7])) % 101

	return Traits{
		ColorHue: hue,
		Pattern:  pattern,
		Element:  element,
		Rarity:   rarity,
	}
}

// RarityBand classifies a stored rarity score for display. It is never
// persisted and may be recomputed freely.
func RarityBand(score int) string {
	switch {
	case score >= 90:
		return "Legendary"
	case score >= 70:
		return "Epic"
	case score >= 50:
		return "Rare"
	case score >= 30:
		return "Uncommon"
	default:
		return "Common"
	}
}
