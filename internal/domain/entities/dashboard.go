package entities

// ManagementSplit é a contagem separada por tipo de gestão; Public+Private == Total
type ManagementSplit struct {
	Total        int64 `json:"total"`
	PublicCount  int64 `json:"public_count"`
	PrivateCount int64 `json:"private_count"`
}

// DashboardTotals alimenta os cards de resumo do dashboard
type DashboardTotals struct {
	Schools        ManagementSplit `json:"schools"`
	SubRegions     ManagementSplit `json:"subregions"`
	Regions        ManagementSplit `json:"regions"`
	Participations ManagementSplit `json:"participations"`
}

// RollupRow é uma linha de rollup por unidade (DRE, UGEL, escola ou tipo de gestão)
type RollupRow struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	ManagementSplit
}

// ManagementCount é a linha crua devolvida pelas consultas de rollup
type ManagementCount struct {
	KeyID      int64  `gorm:"column:key_id"`
	KeyName    string `gorm:"column:key_name"`
	Management string `gorm:"column:management"`
	Count      int64  `gorm:"column:count"`
}
