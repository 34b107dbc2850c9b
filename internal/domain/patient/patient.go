package patient

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dentware/clinicdesk/internal/domain"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, "":
		return true
	}
	return false
}

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg, "":
		return true
	}
	return false
}

// Patient mirrors the persisted JSON layout of the `patients` collection.
// The id is opaque and immutable after creation.
type Patient struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DOB        domain.Date `json:"dob"`
	Contact    string      `json:"contact"`
	Gender     Gender      `json:"gender,omitempty"`
	BloodGroup BloodGroup  `json:"bloodGroup,omitempty"`
	HealthInfo string      `json:"healthInfo,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	ProfilePic string      `json:"profilePic,omitempty"`
}

// Initials takes the first rune of up to two name words, for avatar
// placeholders when no profile picture is set.
func (p *Patient) Initials() string {
	var initials []rune
	for _, word := range strings.Fields(p.Name) {
		r, _ := utf8.DecodeRuneInString(word)
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

type CreateCommand struct {
	Name       string      `json:"name"`
	DOB        domain.Date `json:"dob"`
	Contact    string      `json:"contact"`
	Gender     Gender      `json:"gender"`
	BloodGroup BloodGroup  `json:"bloodGroup"`
	HealthInfo string      `json:"healthInfo"`
	Notes      string      `json:"notes"`
	Tags       []string    `json:"tags"`
	ProfilePic string      `json:"profilePic"`
}

// Patch carries a partial update. Nil fields are left alone; a non-nil
// pointer always overwrites, so clearing a field is an explicit decision
// (send the empty value, not an absent one).
type Patch struct {
	Name       *string      `json:"name"`
	DOB        *domain.Date `json:"dob"`
	Contact    *string      `json:"contact"`
	Gender     *Gender      `json:"gender"`
	BloodGroup *BloodGroup  `json:"bloodGroup"`
	HealthInfo *string      `json:"healthInfo"`
	Notes      *string      `json:"notes"`
	Tags       *[]string    `json:"tags"`
	ProfilePic *string      `json:"profilePic"`
}

func (p *Patch) Apply(dst *Patient) {
	if p.Name != nil {
		dst.Name = strings.TrimSpace(*p.Name)
	}
	if p.DOB != nil {
		dst.DOB = *p.DOB
	}
	if p.Contact != nil {
		dst.Contact = strings.TrimSpace(*p.Contact)
	}
	if p.Gender != nil {
		dst.Gender = *p.Gender
	}
	if p.BloodGroup != nil {
		dst.BloodGroup = *p.BloodGroup
	}
	if p.HealthInfo != nil {
		dst.HealthInfo = *p.HealthInfo
	}
	if p.Notes != nil {
		dst.Notes = *p.Notes
	}
	if p.Tags != nil {
		dst.Tags = NormalizeTags(*p.Tags)
	}
	if p.ProfilePic != nil {
		dst.ProfilePic = *p.ProfilePic
	}
}

// NormalizeTags drops empty and duplicate values while preserving the
// order of first appearance.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
