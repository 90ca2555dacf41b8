package user

// Row - плоское представление User, по колонке на каждое листовое поле таблицы users.
// Имя колонки - путь во вложенном JSON через "_". В location_postcode лежит
// JSON-литерал индекса, поэтому строка и число различаются и после чтения.
type Row struct {
	ID                           int64   `db:"id"`
	Gender                       string  `db:"gender"`
	NameTitle                    string  `db:"name_title"`
	NameFirst                    string  `db:"name_first"`
	NameLast                     string  `db:"name_last"`
	LocationStreetNumber         int     `db:"location_street_number"`
	LocationStreetName           string  `db:"location_street_name"`
	LocationCity                 string  `db:"location_city"`
	LocationState                string  `db:"location_state"`
	LocationCountry              string  `db:"location_country"`
	LocationPostcode             string  `db:"location_postcode"`
	LocationCoordinatesLatitude  string  `db:"location_coordinates_latitude"`
	LocationCoordinatesLongitude string  `db:"location_coordinates_longitude"`
	LocationTimezoneOffset       string  `db:"location_timezone_offset"`
	LocationTimezoneDescription  string  `db:"location_timezone_description"`
	Email                        string  `db:"email"`
	LoginUUID                    string  `db:"login_uuid"`
	LoginUsername                string  `db:"login_username"`
	LoginPassword                string  `db:"login_password"`
	LoginSalt                    string  `db:"login_salt"`
	LoginMD5                     string  `db:"login_md5"`
	LoginSHA1                    string  `db:"login_sha1"`
	LoginSHA256                  string  `db:"login_sha256"`
	DOBDate                      string  `db:"dob_date"`
	DOBAge                       int     `db:"dob_age"`
	RegisteredDate               string  `db:"registered_date"`
	RegisteredAge                int     `db:"registered_age"`
	Phone                        string  `db:"phone"`
	Cell                         string  `db:"cell"`
	ID2Name                      string  `db:"id2_name"`
	ID2Value                     *string `db:"id2_value"`
	PictureLarge                 string  `db:"picture_large"`
	PictureMedium                string  `db:"picture_medium"`
	PictureThumbnail             string  `db:"picture_thumbnail"`
	Nat                          string  `db:"nat"`
}

// ToRow разворачивает u в плоскую строку. Результат не делит память с u.
func ToRow(u *User) Row {
	return Row{
		ID:                           u.ID,
		Gender:                       u.Gender,
		NameTitle:                    u.Name.Title,
		NameFirst:                    u.Name.First,
		NameLast:                     u.Name.Last,
		LocationStreetNumber:         u.Location.Street.Number,
		LocationStreetName:           u.Location.Street.Name,
		LocationCity:                 u.Location.City,
		LocationState:                u.Location.State,
		LocationCountry:              u.Location.Country,
		LocationPostcode:             string(u.Location.Postcode),
		LocationCoordinatesLatitude:  u.Location.Coordinates.Latitude,
		LocationCoordinatesLongitude: u.Location.Coordinates.Longitude,
		LocationTimezoneOffset:       u.Location.Timezone.Offset,
		LocationTimezoneDescription:  u.Location.Timezone.Description,
		Email:                        u.Email,
		LoginUUID:                    u.Login.UUID,
		LoginUsername:                u.Login.Username,
		LoginPassword:                u.Login.Password,
		LoginSalt:                    u.Login.Salt,
		LoginMD5:                     u.Login.MD5,
		LoginSHA1:                    u.Login.SHA1,
		LoginSHA256:                  u.Login.SHA256,
		DOBDate:                      u.DOB.Date,
		DOBAge:                       u.DOB.Age,
		RegisteredDate:               u.Registered.Date,
		RegisteredAge:                u.Registered.Age,
		Phone:                        u.Phone,
		Cell:                         u.Cell,
		ID2Name:                      u.ID2.Name,
		ID2Value:                     copyString(u.ID2.Value),
		PictureLarge:                 u.Picture.Large,
		PictureMedium:                u.Picture.Medium,
		PictureThumbnail:             u.Picture.Thumbnail,
		Nat:                          u.Nat,
	}
}

// FromRow - обратное к ToRow.
func FromRow(r Row) User {
	return User{
		ID:     r.ID,
		Gender: r.Gender,
		Name: Name{
			Title: r.NameTitle,
			First: r.NameFirst,
			Last:  r.NameLast,
		},
		Location: Location{
			Street: Street{
				Number: r.LocationStreetNumber,
				Name:   r.LocationStreetName,
			},
			City:     r.LocationCity,
			State:    r.LocationState,
			Country:  r.LocationCountry,
			Postcode: Postcode(r.LocationPostcode),
			Coordinates: Coordinates{
				Latitude:  r.LocationCoordinatesLatitude,
				Longitude: r.LocationCoordinatesLongitude,
			},
			Timezone: Timezone{
				Offset:      r.LocationTimezoneOffset,
				Description: r.LocationTimezoneDescription,
			},
		},
		Email: r.Email,
		Login: Login{
			UUID:     r.LoginUUID,
			Username: r.LoginUsername,
			Password: r.LoginPassword,
			Salt:     r.LoginSalt,
			MD5:      r.LoginMD5,
			SHA1:     r.LoginSHA1,
			SHA256:   r.LoginSHA256,
		},
		DOB: DatedAge{
			Date: r.DOBDate,
			Age:  r.DOBAge,
		},
		Registered: DatedAge{
			Date: r.RegisteredDate,
			Age:  r.RegisteredAge,
		},
		Phone: r.Phone,
		Cell:  r.Cell,
		ID2: Identifier{
			Name:  r.ID2Name,
			Value: copyString(r.ID2Value),
		},
		Picture: Picture{
			Large:     r.PictureLarge,
			Medium:    r.PictureMedium,
			Thumbnail: r.PictureThumbnail,
		},
		Nat: r.Nat,
	}
}

// Columns - все колонки, кроме id, в порядке вставки.
var Columns = []string{
	"gender",
	"name_title", "name_first", "name_last",
	"location_street_number", "location_street_name",
	"location_city", "location_state", "location_country", "location_postcode",
	"location_coordinates_latitude", "location_coordinates_longitude",
	"location_timezone_offset", "location_timezone_description",
	"email",
	"login_uuid", "login_username", "login_password", "login_salt",
	"login_md5", "login_sha1", "login_sha256",
	"dob_date", "dob_age",
	"registered_date", "registered_age",
	"phone", "cell",
	"id2_name", "id2_value",
	"picture_large", "picture_medium", "picture_thumbnail",
	"nat",
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
