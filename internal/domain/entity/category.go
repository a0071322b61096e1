package entity

// Each facet of a workshop carries exactly one value; the zero value means unset.

type AgeRange string

const (
	AgeRangeKids    AgeRange = "kids"
	AgeRangeTeens   AgeRange = "teens"
	AgeRangeAdults  AgeRange = "adults"
	AgeRangeAllAges AgeRange = "all-ages"
)

type ClassType string

const (
	ClassTypeInPerson ClassType = "in-person"
	ClassTypeOnline   ClassType = "online"
	ClassTypeHybrid   ClassType = "hybrid"
)

type TechType string

const (
	TechTypeTech   TechType = "tech"
	TechTypeNoTech TechType = "no-tech"
	TechTypeMixed  TechType = "mixed"
)

type Subject string

const (
	SubjectCoding      Subject = "coding"
	SubjectElectronics Subject = "electronics"
	SubjectRobotics    Subject = "robotics"
	SubjectDesign      Subject = "design"
	Subject3DPrinting  Subject = "3d-printing"
	SubjectOther       Subject = "other"
)

// WorkshopCategories replaces a flat tag list with one field per facet.
type WorkshopCategories struct {
	AgeRange  AgeRange  `bson:"age_range,omitempty" json:"age_range,omitempty" binding:"omitempty,agerange"`
	ClassType ClassType `bson:"class_type,omitempty" json:"class_type,omitempty" binding:"omitempty,classtype"`
	TechType  TechType  `bson:"tech_type,omitempty" json:"tech_type,omitempty" binding:"omitempty,techtype"`
	Subject   Subject   `bson:"subject,omitempty" json:"subject,omitempty" binding:"omitempty,subject"`
}

func (a AgeRange) Valid() bool {
	switch a {
	case "", AgeRangeKids, AgeRangeTeens, AgeRangeAdults, AgeRangeAllAges:
		return true
	}
	return false
}

func (c ClassType) Valid() bool {
	switch c {
	case "", ClassTypeInPerson, ClassTypeOnline, ClassTypeHybrid:
		return true
	}
	return false
}

func (t TechType) Valid() bool {
	switch t {
	case "", TechTypeTech, TechTypeNoTech, TechTypeMixed:
		return true
	}
	return false
}

func (s Subject) Valid() bool {
	switch s {
	case "", SubjectCoding, SubjectElectronics, SubjectRobotics, SubjectDesign, Subject3DPrinting, SubjectOther:
		return true
	}
	return false
}

// Valid reports whether every set facet holds a known value.
func (c WorkshopCategories) Valid() bool {
	return c.AgeRange.Valid() && c.ClassType.Valid() && c.TechType.Valid() && c.Subject.Valid()
}
