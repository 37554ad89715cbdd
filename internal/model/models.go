package model

import "time"

type ID = int64

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s), true
	}
	return "", false
}

type RiskCategory string

const (
	RiskLow    RiskCategory = "LOW"
	RiskMedium RiskCategory = "MEDIUM"
	RiskHigh   RiskCategory = "HIGH"
)

func ParseRiskCategory(s string) (RiskCategory, bool) {
	switch RiskCategory(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskCategory(s), true
	}
	return "", false
}

type User struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
}

// FeatureVector holds the twelve clinical inputs the classifier was trained
// on, in dataset column order.
type FeatureVector struct {
	Age                     float64 `json:"age" db:"age"`
	Anaemia                 float64 `json:"anaemia" db:"anaemia"`
	CreatininePhosphokinase float64 `json:"creatinine_phosphokinase" db:"creatinine_phosphokinase"`
	Diabetes                float64 `json:"diabetes" db:"diabetes"`
	EjectionFraction        float64 `json:"ejection_fraction" db:"ejection_fraction"`
	HighBloodPressure       float64 `json:"high_blood_pressure" db:"high_blood_pressure"`
	Platelets               float64 `json:"platelets" db:"platelets"`
	SerumCreatinine         float64 `json:"serum_creatinine" db:"serum_creatinine"`
	SerumSodium             float64 `json:"serum_sodium" db:"serum_sodium"`
	Sex                     float64 `json:"sex" db:"sex"`
	Smoking                 float64 `json:"smoking" db:"smoking"`
	Time                    float64 `json:"time" db:"time"`
}

// FeatureColumns lists the storage columns of a FeatureVector in the same
// order as Ordered returns the values.
var FeatureColumns = []string{
	"age",
	"anaemia",
	"creatinine_phosphokinase",
	"diabetes",
	"ejection_fraction",
	"high_blood_pressure",
	"platelets",
	"serum_creatinine",
	"serum_sodium",
	"sex",
	"smoking",
	"time",
}

func FeatureVectorFromMap(m map[string]float64) FeatureVector {
	return FeatureVector{
		Age:                     m["age"],
		Anaemia:                 m["anaemia"],
		CreatininePhosphokinase: m["creatinine_phosphokinase"],
		Diabetes:                m["diabetes"],
		EjectionFraction:        m["ejection_fraction"],
		HighBloodPressure:       m["high_blood_pressure"],
		Platelets:               m["platelets"],
		SerumCreatinine:         m["serum_creatinine"],
		SerumSodium:             m["serum_sodium"],
		Sex:                     m["sex"],
		Smoking:                 m["smoking"],
		Time:                    m["time"],
	}
}

func (v FeatureVector) Ordered() []float64 {
	return []float64{
		v.Age,
		v.Anaemia,
		v.CreatininePhosphokinase,
		v.Diabetes,
		v.EjectionFraction,
		v.HighBloodPressure,
		v.Platelets,
		v.SerumCreatinine,
		v.SerumSodium,
		v.Sex,
		v.Smoking,
		v.Time,
	}
}

// Assessment is one persisted risk computation. Rows are immutable: inserted
// once, never updated.
type Assessment struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UserID    ID        `json:"userId" db:"user_id"`

	FeatureVector

	Probability  float64      `json:"probability" db:"probability"`
	RiskCategory RiskCategory `json:"riskCategory" db:"risk_category"`
}

// AssessmentWithUser joins an assessment to its owning patient's username
// for the doctor-side views.
type AssessmentWithUser struct {
	Assessment
	Username string `json:"username" db:"username"`
}

// PatientSummary is one row of the doctor dashboard.
type PatientSummary struct {
	ID               ID        `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	CreatedAt        time.Time `json:"registeredAt" db:"created_at"`
	AssessmentsCount int       `json:"assessmentsCount" db:"assessments_count"`
}
