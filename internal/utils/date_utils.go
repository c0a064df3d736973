package utils

import (
	"fmt"
	"time"
)

// GetLimaLocation retorna a localização de Lima (UTC-5)
// Deve ser usada em todo o projeto para exibir datas no fuso do Peru.
func GetLimaLocation() *time.Location {
	limaLocation, err := time.LoadLocation("America/Lima")
	if err != nil {
		// Fallback para UTC-5 se não conseguir carregar a localização
		limaLocation = time.FixedZone("PET", -5*60*60)
	}
	return limaLocation
}

// ParseDateParam aceita RFC3339, data simples ou data e hora sem fuso (interpretadas em Lima)
func ParseDateParam(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	loc := GetLimaLocation()
	if t, err := time.ParseInLocation("2006-01-02", dateStr, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", dateStr, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("formato de fecha inválido: %q", dateStr)
}
