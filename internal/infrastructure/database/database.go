package database

import (
	"context"

	"gorm.io/gorm"
)

// Chave para o contexto que indica se o timezone já foi configurado
type timezoneKey struct{}

// SetTimezoneMiddleware cria um callback GORM que fixa o timezone de Lima na sessão
func SetTimezoneMiddleware() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		// Evita recursão infinita
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return
		}

		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)
		db.Session(&gorm.Session{NewDB: true, Context: ctx}).Exec("SET timezone = 'America/Lima'")
	}
}

// RegisterMiddlewares registra os callbacks necessários no GORM
func RegisterMiddlewares(db *gorm.DB) {
	// Só no callback de consulta, onde datas são formatadas pelo Postgres
	db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", SetTimezoneMiddleware())
}
