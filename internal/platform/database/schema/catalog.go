package schema

// ArtistTable represents the 'artists' table
type ArtistTable struct {
	Table              string
	ID                 string
	Name               string
	DOB                string
	Gender             string
	Address            string
	FirstReleaseYear   string
	NoOfAlbumsReleased string
	CreatedAt          string
	UpdatedAt          string
}

// Artists is the schema definition for artists
var Artists = ArtistTable{
	Table:              "artists",
	ID:                 "id",
	Name:               "name",
	DOB:                "dob",
	Gender:             "gender",
	Address:            "address",
	FirstReleaseYear:   "first_release_year",
	NoOfAlbumsReleased: "no_of_albums_released",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

func (t ArtistTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.DOB, t.Gender, t.Address, t.FirstReleaseYear,
		t.NoOfAlbumsReleased, t.CreatedAt, t.UpdatedAt,
	}
}

// SongTable represents the 'songs' table
type SongTable struct {
	Table     string
	ID        string
	Title     string
	AlbumName string
	Genre     string
	ArtistID  string
	CreatedAt string
	UpdatedAt string
}

// Songs is the schema definition for songs
var Songs = SongTable{
	Table:     "songs",
	ID:        "id",
	Title:     "title",
	AlbumName: "album_name",
	Genre:     "genre",
	ArtistID:  "artist_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SongTable) Columns() []string {
	return []string{t.ID, t.Title, t.AlbumName, t.Genre, t.ArtistID, t.CreatedAt, t.UpdatedAt}
}

// # Enumerated Domains

// EnumType names a PostgreSQL enum shared across tables.
type EnumType struct {
	Name   string
	Values []string
}

// Gender values: male, female, other.
var Gender = EnumType{Name: "gender", Values: []string{"m", "f", "o"}}

// Genre values accepted for songs.
var Genre = EnumType{Name: "genre", Values: []string{"rnb", "country", "classic", "rock", "jazz"}}
