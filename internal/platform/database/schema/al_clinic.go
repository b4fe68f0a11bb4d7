// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package schema

// PatientTable represents the 'al_patient' table.
type PatientTable struct {
	Table         string
	ID            string
	HistoryNumber string
	FirstName     string
	LastName      string
	Patronymic    string
	BirthDate     string
	Sex           string
	CreatedBy     string
}

// Patient is the schema definition for al_patient.
var Patient = PatientTable{
	Table:         "al_patient",
	ID:            "id",
	HistoryNumber: "history_number",
	FirstName:     "first_name",
	LastName:      "last_name",
	Patronymic:    "patronymic",
	BirthDate:     "birth_date",
	Sex:           "sex",
	CreatedBy:     "created_by",
}

// Columns returns business columns followed by [Version] columns.
func (t PatientTable) Columns() []string {
	return append([]string{
		t.ID, t.HistoryNumber, t.FirstName, t.LastName, t.Patronymic, t.BirthDate, t.Sex, t.CreatedBy,
	}, Version.Columns()...)
}

// ResearchTable represents the 'al_patient_research' table.
type ResearchTable struct {
	Table        string
	ID           string
	PatientID    string
	ResearchDate string
	Material     string
	CreatedBy    string
}

// Research is the schema definition for al_patient_research.
var Research = ResearchTable{
	Table:        "al_patient_research",
	ID:           "id",
	PatientID:    "patient_id",
	ResearchDate: "research_date",
	Material:     "material",
	CreatedBy:    "created_by",
}

func (t ResearchTable) Columns() []string {
	return append([]string{t.ID, t.PatientID, t.ResearchDate, t.Material, t.CreatedBy}, Version.Columns()...)
}

// ResearchResultTable represents the 'al_research_result' table (diagnosis).
type ResearchResultTable struct {
	Table       string
	ID          string
	ResearchID  string
	Conclusion  string
	DiagnosedAt string
	CreatedBy   string
}

// ResearchResult is the schema definition for al_research_result.
var ResearchResult = ResearchResultTable{
	Table:       "al_research_result",
	ID:          "id",
	ResearchID:  "research_id",
	Conclusion:  "conclusion",
	DiagnosedAt: "diagnosed_at",
	CreatedBy:   "created_by",
}

func (t ResearchResultTable) Columns() []string {
	return []string{t.ID, t.ResearchID, t.Conclusion, t.DiagnosedAt, t.CreatedBy}
}

// ImmunophenotypingTable represents the 'al_immunophenotyping' table.
type ImmunophenotypingTable struct {
	Table           string
	ID              string
	ResearchID      string
	MarkerID        string
	MedicationID    string
	PositivePercent string
}

// Immunophenotyping is the schema definition for al_immunophenotyping.
var Immunophenotyping = ImmunophenotypingTable{
	Table:           "al_immunophenotyping",
	ID:              "id",
	ResearchID:      "research_id",
	MarkerID:        "marker_id",
	MedicationID:    "medication_id",
	PositivePercent: "percent_positive_cells",
}

func (t ImmunophenotypingTable) Columns() []string {
	return []string{t.ID, t.ResearchID, t.MarkerID, t.MedicationID, t.PositivePercent}
}

// CellImageTable represents the 'al_cell_image' table.
type CellImageTable struct {
	Table      string
	ID         string
	ResearchID string
	CellTypeID string
	ImageKey   string
	Annotation string
	CreatedBy  string
}

// CellImage is the schema definition for al_cell_image.
var CellImage = CellImageTable{
	Table:      "al_cell_image",
	ID:         "id",
	ResearchID: "research_id",
	CellTypeID: "cell_type_id",
	ImageKey:   "image_key",
	Annotation: "annotation",
	CreatedBy:  "created_by",
}

func (t CellImageTable) Columns() []string {
	return append([]string{t.ID, t.ResearchID, t.CellTypeID, t.ImageKey, t.Annotation, t.CreatedBy}, Version.Columns()...)
}

// CellImageCharacteristicTable represents the 'al_cell_image_characteristic' link table.
type CellImageCharacteristicTable struct {
	Table            string
	CellImageID      string
	CharacteristicID string
}

// CellImageCharacteristic is the schema definition for al_cell_image_characteristic.
var CellImageCharacteristic = CellImageCharacteristicTable{
	Table:            "al_cell_image_characteristic",
	CellImageID:      "cell_image_id",
	CharacteristicID: "characteristic_id",
}
