package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrConflict           = errors.New("conflicto con datos existentes")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("sesión no válida")
	ErrForbidden          = errors.New("acceso denegado")
)

// MissingFilterError indica um filtro obrigatório ausente na requisição
type MissingFilterError struct {
	Field   string
	Message string
}

func (e *MissingFilterError) Error() string {
	return e.Message
}

// NewMissingFilter monta o erro com a mensagem exibida ao usuário
func NewMissingFilter(field, message string) *MissingFilterError {
	return &MissingFilterError{Field: field, Message: message}
}

// ValidationError carrega mensagens por campo
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// NewValidation cria um ValidationError para um único campo
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Datos inválidos",
		Fields:  map[string]string{field: message},
	}
}

const pgUniqueViolation = "23505"

// FromDB converte erros conhecidos do Postgres em erros de domínio
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	}
	return err
}
