// Package password хэширует пароли админских аккаунтов (argon2id).
// Граждане паролей не имеют — их вход живёт в отдельном сервисе кодов.
package password

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

type Hasher struct {
	params *argon2id.Params
}

// NewDefault — параметры под интерактивный логин админки: 64 МиБ памяти,
// три прохода. Логин редкий, перебор по утёкшей базе должен быть дорогим.
func NewDefault() *Hasher {
	return &Hasher{params: &argon2id.Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}}
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

// Hash возвращает закодированную строку $argon2id$v=19$m=..., она и
// хранится в admins.pass_hash.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify сравнивает пароль с сохранённым хэшем; параметры проверки
// читаются из самой кодировки, не из h.
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
