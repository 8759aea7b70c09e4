package domain

import (
	"context"
	"time"
)

type Ebook struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Title        string     `gorm:"size:255" json:"title"`
	Author       string     `gorm:"size:255" json:"author"`
	Preview      string     `gorm:"size:512" json:"preview"`
	PublishDate  string     `gorm:"size:64" json:"publishDate"`
	Languages    StringList `gorm:"type:text" json:"languages"`
	Pages        int        `json:"pages"`
	Formats      StringList `gorm:"type:text" json:"formats"`
	Location     string     `gorm:"size:191" json:"location"`
	LocationIcon string     `gorm:"size:512" json:"locationIcon"`
	LocationURL  string     `gorm:"size:512" json:"locationUrl"`
	CreatedAt    time.Time  `json:"-"`
}

func (Ebook) TableName() string { return "ebooks" }

type EbookRepr struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Preview      string   `json:"preview"`
	PublishDate  string   `json:"publishDate"`
	Languages    []string `json:"languages"`
	Pages        int      `json:"pages"`
	Formats      []string `json:"formats"`
	Location     string   `json:"location"`
	LocationIcon string   `json:"locationIcon"`
	LocationURL  string   `json:"locationUrl"`
}

func (e *Ebook) Repr() EbookRepr {
	langs := e.Languages
	if langs == nil {
		langs = StringList{}
	}
	formats := e.Formats
	if formats == nil {
		formats = StringList{}
	}
	return EbookRepr{
		ID: e.ID, Title: e.Title, Author: e.Author, Preview: e.Preview,
		PublishDate: e.PublishDate, Languages: langs, Pages: e.Pages,
		Formats: formats, Location: e.Location,
		LocationIcon: e.LocationIcon, LocationURL: e.LocationURL,
	}
}

type EbookRepository interface {
	Create(ctx context.Context, e *Ebook) error
	FindByID(ctx context.Context, id string) (*Ebook, error)
	FindByIDs(ctx context.Context, ids []string) ([]Ebook, error)
	List(ctx context.Context) ([]Ebook, error)
	// FindDuplicate 按 title + formats + location 找同一本书，没有返回 nil, nil。
	FindDuplicate(ctx context.Context, title string, formats StringList, location string) (*Ebook, error)
	// Delete 幂等：不存在也算成功。
	Delete(ctx context.Context, id string) error
}
