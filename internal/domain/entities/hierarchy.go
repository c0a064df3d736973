package entities

import "time"

// Region corresponde a uma DRE
type Region struct {
	ID   int64  `json:"id" gorm:"primaryKey;column:id"`
	Code string `json:"code" gorm:"column:code;type:text;uniqueIndex"`
	Name string `json:"name" gorm:"column:name;type:text;not null"`
}

func (Region) TableName() string { return "regions" }

// SubRegion corresponde a uma UGEL, sempre dentro de uma DRE
type SubRegion struct {
	ID       int64  `json:"id" gorm:"primaryKey;column:id"`
	RegionID int64  `json:"region_id" gorm:"column:region_id;not null;index"`
	Code     string `json:"code" gorm:"column:code;type:text;uniqueIndex"`
	Name     string `json:"name" gorm:"column:name;type:text;not null"`

	Region Region `json:"-" gorm:"foreignKey:RegionID"`
}

func (SubRegion) TableName() string { return "subregions" }

// School é uma institución educativa; Management é texto livre (pública, privada...)
type School struct {
	ID          int64  `json:"id" gorm:"primaryKey;column:id"`
	SubRegionID int64  `json:"subregion_id" gorm:"column:subregion_id;not null;index"`
	Code        string `json:"code" gorm:"column:code;type:text;uniqueIndex;not null"`
	Name        string `json:"name" gorm:"column:name;type:text;not null"`
	Management  string `json:"management" gorm:"column:management;type:text"`

	SubRegion SubRegion `json:"-" gorm:"foreignKey:SubRegionID"`
}

func (School) TableName() string { return "schools" }

// SchoolPlacement é a escola com os nomes da hierarquia resolvidos
type SchoolPlacement struct {
	SchoolID      int64  `json:"school_id"`
	SchoolName    string `json:"school_name"`
	SubRegionID   int64  `json:"subregion_id"`
	SubRegionName string `json:"subregion_name"`
	RegionID      int64  `json:"region_id"`
	RegionName    string `json:"region_name"`
}

// RosterEntry é uma linha da nómina de estudantes importada
type RosterEntry struct {
	ID             int64     `json:"id" gorm:"primaryKey;column:id"`
	SchoolID       int64     `json:"school_id" gorm:"column:school_id;not null;uniqueIndex:idx_roster_school_student"`
	StudentCode    string    `json:"student_code" gorm:"column:student_code;type:text;not null;uniqueIndex:idx_roster_school_student"`
	FirstNames     string    `json:"first_names" gorm:"column:first_names;type:text"`
	LastNames      string    `json:"last_names" gorm:"column:last_names;type:text"`
	EducationLevel string    `json:"education_level" gorm:"column:education_level;type:text;not null"`
	Grade          string    `json:"grade" gorm:"column:grade;type:text"`
	Section        string    `json:"section" gorm:"column:section;type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`

	School School `json:"-" gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE"`

	// Campos da carga; não são persistidos
	SchoolCode string `json:"-" gorm:"-"`
	SourceRow  int    `json:"-" gorm:"-"`
}

func (RosterEntry) TableName() string { return "roster_entries" }
