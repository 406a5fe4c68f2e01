// Package models holds the kitchen account data model: persons, residency intervals
// and the accumulated tables read from the workbook.
package models

import (
	"fmt"
	"sort"
)

// Person identifies a resident by name and room. Two persons are equal iff both fields match.
type Person struct {
	Name string `json:"name" yaml:"name"`
	Room int    `json:"room" yaml:"room"`
}

// NewPerson builds a Person.
func NewPerson(name string, room int) Person {
	return Person{Name: name, Room: room}
}

func (p Person) String() string {
	return fmt.Sprintf("%s (room %d)", p.Name, p.Room)
}

// Less orders persons by room, then by name.
func (p Person) Less(other Person) bool {
	if p.Room != other.Room {
		return p.Room < other.Room
	}
	return p.Name < other.Name
}

// SortPersons sorts persons in place by room, then name.
func SortPersons(persons []Person) {
	sort.Slice(persons, func(i, j int) bool { return persons[i].Less(persons[j]) })
}

// SortedKeys returns the keys of any person-keyed map ordered by room, then name.
func SortedKeys[V any](m map[Person]V) []Person {
	keys := make([]Person, 0, len(m))
	for p := range m {
		keys = append(keys, p)
	}
	SortPersons(keys)
	return keys
}
