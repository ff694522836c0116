package models

import "time"

// AnimalAttrs is the denormalized snapshot of an animal's descriptive fields
// re-attached to every reading row at query time.
type AnimalAttrs struct {
	Name     string `bson:"name" json:"name"`
	Breed    string `bson:"breed" json:"breed"`
	DOB      string `bson:"dob" json:"dob"` // YYYY-MM-DD, may be empty
	Sex      string `bson:"sex" json:"sex"`
	Species  string `bson:"species" json:"species"`
	PhotoURL string `bson:"photo_url" json:"photo_url"`
	IsPublic bool   `bson:"is_public" json:"is_public"`
}

// Animal is a registered head of livestock. The RFID tag code is the stable
// key; there is no surrogate id.
type Animal struct {
	RFID      string    `bson:"rfid" json:"rfid" binding:"required"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	Name      string    `bson:"name" json:"name" binding:"required"`
	Breed     string    `bson:"breed" json:"breed"`
	DOB       string    `bson:"dob" json:"dob"`
	Sex       string    `bson:"sex" json:"sex"`
	Species   string    `bson:"species" json:"species"`
	PhotoURL  string    `bson:"photo_url" json:"photo_url"`
	IsPublic  bool      `bson:"is_public" json:"is_public"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Attrs projects the registration record into the per-reading snapshot shape.
func (a Animal) Attrs() AnimalAttrs {
	return AnimalAttrs{
		Name:     a.Name,
		Breed:    a.Breed,
		DOB:      a.DOB,
		Sex:      a.Sex,
		Species:  a.Species,
		PhotoURL: a.PhotoURL,
		IsPublic: a.IsPublic,
	}
}
