package fault

import "errors"

// Kind clasifica un error de dominio para que la capa de presentación
// pueda elegir un status sin conocer cada sentinel.
type Kind string

const (
	KindIdentity      Kind = "identity"
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindStorage       Kind = "storage"
)

// Error es un error tipado con un motivo estable (Reason) que viaja hasta el cliente.
type Error struct {
	Kind   Kind
	Reason string
	Msg    string
	Err    error
}

func New(kind Kind, reason, msg string) *Error {
	return &Error{Kind: kind, Reason: reason, Msg: msg}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind + Reason, así un error con mensaje distinto
// (p.ej. validaciones con detalle) sigue matcheando su sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

// WithMsg devuelve una copia con otro mensaje visible.
func (e *Error) WithMsg(msg string) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Msg: msg, Err: e.Err}
}

var ErrStorage = New(KindStorage, "storage_error", "storage error")

// Storage envuelve un error de infraestructura. Si ya viene clasificado, se devuelve tal cual.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Kind: KindStorage, Reason: ErrStorage.Reason, Msg: ErrStorage.Msg, Err: err}
}

// KindOf devuelve "" para errores no clasificados.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func ReasonOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return "internal_error"
}

// Message devuelve el texto seguro para mostrar (sin la causa interna).
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Kind == KindStorage {
			return ErrStorage.Msg
		}
		return fe.Msg
	}
	return "internal error"
}
