package user

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// User представляет профиль пользователя в том виде, в котором он ходит по HTTP.
type User struct {
	ID         int64      `json:"id"`         // ID пользователя, назначается хранилищем
	Gender     string     `json:"gender"`     // Пол
	Name       Name       `json:"name"`       // Имя
	Location   Location   `json:"location"`   // Адрес
	Email      string     `json:"email"`      // Электронная почта (уникальна)
	Login      Login      `json:"login"`      // Учётные данные (хранятся как есть)
	DOB        DatedAge   `json:"dob"`        // Дата рождения
	Registered DatedAge   `json:"registered"` // Дата регистрации
	Phone      string     `json:"phone"`      // Телефон
	Cell       string     `json:"cell"`       // Мобильный
	ID2        Identifier `json:"id2"`        // Вторичный идентификатор
	Picture    Picture    `json:"picture"`    // Аватары
	Nat        string     `json:"nat"`        // Код гражданства
}

type Name struct {
	Title string `json:"title"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type Location struct {
	Street      Street      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Postcode    Postcode    `json:"postcode"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    Timezone    `json:"timezone"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Timezone struct {
	Offset      string `json:"offset"`
	Description string `json:"description"`
}

// Login хранится как есть: сервис ничего не хеширует и не проверяет.
type Login struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Password string `json:"password"`
	Salt     string `json:"salt"`
	MD5      string `json:"md5"`
	SHA1     string `json:"sha1"`
	SHA256   string `json:"sha256"`
}

// DatedAge используется и для даты рождения, и для даты регистрации.
// Date хранится в том виде, в котором её прислал клиент.
type DatedAge struct {
	Date string `json:"date"`
	Age  int    `json:"age"`
}

// Identifier - вторичный идентификатор (например, национальный). Value может быть null.
type Identifier struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// Postcode хранит почтовый индекс как исходный JSON-литерал: строку в кавычках
// или число. Так строка "12345" и число 12345 не путаются при чтении из хранилища.
// Пустое значение соответствует отсутствующему индексу и пишется как "".
type Postcode string

// PostcodeString возвращает индекс, который сериализуется как JSON-строка.
func PostcodeString(s string) Postcode {
	raw, _ := json.Marshal(s)
	return Postcode(raw)
}

// PostcodeNumber возвращает индекс-число. n должен быть корректным JSON-числом.
func PostcodeNumber(n string) Postcode {
	return Postcode(n)
}

// IsNumber сообщает, пришёл ли индекс числом.
func (p Postcode) IsNumber() bool {
	return p != "" && p[0] != '"'
}

// String возвращает текст индекса без кавычек.
func (p Postcode) String() string {
	if p == "" || p.IsNumber() {
		return string(p)
	}

	var s string
	if err := json.Unmarshal([]byte(p), &s); err != nil {
		return string(p)
	}
	return s
}

func (p *Postcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("postcode: %w", err)
		}
		*p = Postcode(data)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("postcode must be a string or a number: %w", err)
	}
	*p = Postcode(n.String())

	return nil
}

func (p Postcode) MarshalJSON() ([]byte, error) {
	if p == "" {
		return []byte(`""`), nil
	}
	if !json.Valid([]byte(p)) {
		// значение записано в хранилище в обход API
		return json.Marshal(string(p))
	}

	return []byte(p), nil
}
