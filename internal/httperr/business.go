package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	return Code(err) == code
}

// Code extrae el código de negocio, o "" si no es un BusinessError.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// StorageError envuelve fallas del datastore. Sin reintentos en esta capa.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	return "storage_unavailable: " + e.Err.Error()
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func ErrStorage(err error) error {
	if err == nil {
		return nil
	}
	return StorageError{Err: err}
}

func IsStorage(err error) bool {
	var se StorageError
	return errors.As(err, &se)
}
