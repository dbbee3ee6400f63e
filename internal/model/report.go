package model

// FarmReport is metadata for an uploaded compliance document. File contents
// live outside this system; only the descriptor is stored.
type FarmReport struct {
	ID          string  `json:"id"`
	FarmID      string  `json:"farmId"`
	FileName    string  `json:"fileName"`
	FileType    string  `json:"fileType"` // pdf, excel, csv
	FileSize    int     `json:"fileSize"`
	UploadedBy  string  `json:"uploadedBy"`
	UploadedAt  string  `json:"uploadedAt"`
	ReportType  string  `json:"reportType"` // compliance, inspection, veterinary
	Description *string `json:"description,omitempty"`
}

// InsertFarmReport is the payload for recording an uploaded report.
type InsertFarmReport struct {
	FarmID      string  `json:"farmId"`
	FileName    string  `json:"fileName"`
	FileType    string  `json:"fileType"`
	FileSize    int     `json:"fileSize"`
	UploadedBy  string  `json:"uploadedBy"`
	ReportType  string  `json:"reportType"`
	Description *string `json:"description,omitempty"`
}
