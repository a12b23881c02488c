package fault

import "net/http"

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindIdentity:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
