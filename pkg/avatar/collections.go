package avatar

import (
	"slices"
	"strconv"
)

// Set is the name of a collection of avatar images.
type Set string

const (
	// Animals is a collection of 45 animal illustrations.
	Animals Set = "animals"
	// RickMorty is a collection of 671 Rick and Morty characters, identified
	// by their number.
	RickMorty Set = "rick_morty"
)

// Sets is the list of the known collections.
var Sets = []Set{Animals, RickMorty}

const rickMortyCount = 671

var animalIDs = []string{
	"ant", "bear", "bee", "bull", "camel", "cat", "chameleon", "crab",
	"crocodile", "dinosaur", "dog", "dolphin", "duck", "eagle", "elephant",
	"flamingo", "fox", "frog", "goat", "gorilla", "hedgehog", "horse",
	"kangaroo", "koala", "ladybug", "lion", "mammoth", "mouse", "octopus",
	"owl", "panda", "parrot", "penguin", "pig", "pufferfish", "rabbit",
	"raccoon", "rooster", "shark", "slothbear", "snake", "tiger", "turtle",
	"whale", "zebra",
}

var rickMortyIDs = func() []string {
	ids := make([]string, rickMortyCount)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 1)
	}
	return ids
}()

var setIDs = map[Set][]string{
	Animals:   animalIDs,
	RickMorty: rickMortyIDs,
}

// IDs returns the identifiers of the images in the collection.
func (s Set) IDs() []string {
	return slices.Clone(setIDs[s])
}

// Has returns true if id is an image of the collection.
func (s Set) Has(id string) bool {
	return slices.Contains(setIDs[s], id)
}

// Valid returns true for known collections.
func (s Set) Valid() bool {
	_, ok := setIDs[s]
	return ok
}

func (s Set) String() string {
	return string(s)
}
