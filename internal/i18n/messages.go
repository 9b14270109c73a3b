// Package i18n holds the user-facing strings of the client. Keys are the
// English texts; other languages are registered in the default catalog.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	NetworkError  = "Network error"
	SignInFailed  = "Sign-in failed"
	SignUpFailed  = "Sign-up failed"
	ShortenFailed = "Error"
	Shortening    = "Shortening…"
	ShortLink     = "Short link: "

	// validation
	Required    = "cannot be blank"
	UnknownRole = "must be user or admin"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPass   = "password"
	FieldRole   = "role"
	FieldURL    = "url"

	SignIn     = "Sign in"
	SignUp     = "Sign up"
	SignOut    = "Sign out"
	Statistics = "Statistics"
)

var russian = map[string]string{
	NetworkError:  "Сетевая ошибка",
	SignInFailed:  "Ошибка авторизации",
	SignUpFailed:  "Ошибка регистрации",
	ShortenFailed: "Ошибка",
	Shortening:    "Сокращаем…",
	ShortLink:     "Короткая ссылка: ",
	Required:      "не может быть пустым",
	UnknownRole:   "должна быть user или admin",
	FieldName:     "имя",
	FieldEmail:    "почта",
	FieldPass:     "пароль",
	FieldRole:     "роль",
	FieldURL:      "ссылка",
	SignIn:        "Войти",
	SignUp:        "Регистрация",
	SignOut:       "Выйти",
	Statistics:    "Статистика",
}

func init() {
	for key, msg := range russian {
		if err := message.SetString(language.Russian, key, msg); err != nil {
			panic(err)
		}
	}
}

// NewPrinter returns a printer for lang. Unknown or unparsable languages
// fall back to English.
func NewPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
