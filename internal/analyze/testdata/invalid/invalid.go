package invalid

import "time"

// Record is the metadata type of UnknownKey.
type Record struct {
	Index bool
	Label string `meta:"display_name"`
}

// Opaque has no way to decode annotation pairs.
type Opaque int

//describe:generate,metadata_type=Record
//meta:index,colour=red
type UnknownKey struct {
	Name string `meta:"display_name=x,size=2"`
}

//describe:metadata_type=Record,metadata_sequence
type Conflict struct{}

//describe:generate,metadata_type=Missing
type MissingMeta struct{}

//describe:metadata_type=Opaque
type OpaqueMeta struct{}

//describe:generate
type BadFields struct {
	Count  int       `describe:"flatten"`
	Stamp  time.Time `describe:"flatten"`
	Events chan int
	Hook   func()
	Tag    string `describe:"rename"`
	Inline string `describe:"inline"`
}

//describe:enum
type Point struct{ X, Y int }

//describe:enum
type Ratio float64

//describe:enum
type Empty int

//describe:bogus
type Bogus int

//describe:enum
type Level int

const (
	//describe:rename
	LevelLow Level = iota
)

//describe:generate
type Callback func()

//meta:tags='a, b'
type Plain int

//describe:display
type Shade int

const (
	ShadeLight Shade = iota
	ShadeDark
)

//describe:display
type Tone string

const ToneWarm Tone = "warm"

func (t *Tone) String() string {
	return string(*t)
}
