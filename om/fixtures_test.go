package om_test

import (
	"github.com/sghaida/omo/om"
)

/*
   Shared fixture hierarchy: Animal -> Bird -> Parrot, plus a standalone Cat.

   Bird declares Speaker; Parrot re-declares Speaker and adds Mimic (which
   extends Speaker). Feeder is declared as an interface but never claimed by
   any class. Sizes are fixed so the deep-size chain is easy to reason about:
   Animal 8, Bird adds 16, Parrot adds 24.
*/

// Speaker is a capability for things that can make a sound.
type Speaker interface {
	Speak() string
}

// Mimic extends Speaker with playback.
type Mimic interface {
	Speaker
	Repeat(phrase string) string
}

// Feeder is declared but never implemented by any fixture class.
type Feeder interface {
	Feed(grams int)
}

type Animal struct {
	om.Core
	Name string
}

type Bird struct {
	Animal
	Wingspan float64
}

type Parrot struct {
	Bird
	Vocab []string
}

type Cat struct {
	om.Core
	Lives int
}

// Speak implements Speaker for Bird and, by promotion, Parrot.
func (b *Bird) Speak() string { return b.Name + ": tweet" }

// Repeat implements Mimic.
func (p *Parrot) Repeat(phrase string) string { return p.Name + ": " + phrase }

// Clone opts Parrot into cloning with an independent vocabulary slice.
func (p *Parrot) Clone() (om.Managed, error) {
	cp := *p
	cp.Vocab = append([]string(nil), p.Vocab...)
	return om.New(ParrotClass, func() *Parrot { return &cp }).Get(), nil
}

var (
	SpeakerIface = om.DeclareInterface[Speaker]("test.Speaker")
	MimicIface   = om.DeclareInterface[Mimic]("test.Mimic", SpeakerIface)
	FeederIface  = om.DeclareInterface[Feeder]("test.Feeder")

	AnimalClass = om.Declare[*Animal]("test.Animal", om.WithSize(8))
	BirdClass   = om.Declare[*Bird]("test.Bird",
		om.Extends(AnimalClass),
		om.Implements(SpeakerIface),
		om.WithSize(24),
	)
	ParrotClass = om.Declare[*Parrot]("test.Parrot",
		om.Extends(BirdClass),
		om.Implements(SpeakerIface, MimicIface),
		om.WithSize(48),
	)
	CatClass = om.Declare[*Cat]("test.Cat")
)

// NewAnimal constructs an Animal through its class factory.
func NewAnimal(name string) om.Handle[*Animal] {
	return om.New(AnimalClass, func() *Animal {
		return &Animal{Name: name}
	})
}

// NewBird constructs a Bird through its class factory.
func NewBird(name string, wingspan float64) om.Handle[*Bird] {
	return om.New(BirdClass, func() *Bird {
		return &Bird{Animal: Animal{Name: name}, Wingspan: wingspan}
	})
}

// NewParrot constructs a Parrot through its class factory.
func NewParrot(name string, vocab ...string) om.Handle[*Parrot] {
	return om.New(ParrotClass, func() *Parrot {
		return &Parrot{
			Bird:  Bird{Animal: Animal{Name: name}, Wingspan: 0.25},
			Vocab: vocab,
		}
	})
}

// NewCat constructs a Cat through its class factory.
func NewCat(lives int) om.Handle[*Cat] {
	return om.New(CatClass, func() *Cat {
		return &Cat{Lives: lives}
	})
}
