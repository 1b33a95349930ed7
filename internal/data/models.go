package data

import (
	"time"
)

// JelajahiCategory groups exploration pages (e.g. "Wisata Alam").
type JelajahiCategory struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"nama" json:"nama"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"deskripsi" json:"deskripsi"`
	IntroText   string    `db:"intro_text" json:"intro_text"`
	Image       string    `db:"gambar" json:"gambar"`
	Region      string    `db:"wilayah" json:"wilayah"`
	Revision    int64     `db:"revision" json:"revision"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Page is a jelajahi detail article.
type Page struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Slug       string    `db:"slug" json:"slug"`
	Content    string    `db:"content" json:"content"`
	Lat        *float64  `db:"lat" json:"lat"`
	Lng        *float64  `db:"lng" json:"lng"`
	CoverImage string    `db:"cover_image" json:"cover_image"`
	Revision   int64     `db:"revision" json:"revision"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Relation links a jelajahi category to a page with an ordering position.
type Relation struct {
	ID         int64     `db:"id" json:"id"`
	CategoryID int64     `db:"kategori_id" json:"kategori_id"`
	PageID     int64     `db:"page_id" json:"page_id"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RelationView is a relation joined with the page it points at.
type RelationView struct {
	ID         int64  `db:"id" json:"id"`
	CategoryID int64  `db:"kategori_id" json:"kategori_id"`
	PageID     int64  `db:"page_id" json:"page_id"`
	OrderIndex int    `db:"order_index" json:"order_index"`
	Title      string `db:"title" json:"title"`
	Slug       string `db:"slug" json:"slug"`
	CoverImage string `db:"cover_image" json:"cover_image"`
}

// KulinerCategory groups culinary items.
type KulinerCategory struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"nama" json:"nama"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"deskripsi" json:"deskripsi"`
	IntroText   string    `db:"intro_text" json:"intro_text"`
	HeroSmall   string    `db:"hero_small" json:"hero_small"`
	HeroLarge   string    `db:"hero_large" json:"hero_large"`
	Revision    int64     `db:"revision" json:"revision"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// KulinerItem is a single dish belonging to a culinary category.
type KulinerItem struct {
	ID            int64     `db:"id" json:"id"`
	CategoryID    int64     `db:"kategori_id" json:"kategori_id"`
	Name          string    `db:"nama" json:"nama"`
	Slug          string    `db:"slug" json:"slug"`
	Description   string    `db:"deskripsi" json:"deskripsi"`
	Image         string    `db:"gambar" json:"gambar"`
	VerticalVideo string    `db:"vertical_video" json:"vertical_video"`
	IsSignature   bool      `db:"is_signature" json:"is_signature"`
	Revision      int64     `db:"revision" json:"revision"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// KulinerItemVideo is an additional video attached to an item.
type KulinerItemVideo struct {
	ID        int64     `db:"id" json:"id"`
	ItemID    int64     `db:"item_id" json:"item_id"`
	Filename  string    `db:"filename" json:"filename"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// KulinerPage is the detail article of a culinary item.
type KulinerPage struct {
	ID         int64     `db:"id" json:"id"`
	ItemID     *int64    `db:"item_id" json:"item_id"`
	Title      string    `db:"title" json:"title"`
	Slug       string    `db:"slug" json:"slug"`
	Content    string    `db:"content" json:"content"`
	Lat        *float64  `db:"lat" json:"lat"`
	Lng        *float64  `db:"lng" json:"lng"`
	CoverImage string    `db:"cover_image" json:"cover_image"`
	Revision   int64     `db:"revision" json:"revision"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// HomeVideo is a clip shown on the landing page.
type HomeVideo struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Caption   string    `db:"caption" json:"caption"`
	Slug      string    `db:"slug" json:"slug"`
	Video     string    `db:"video" json:"video"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PopularEvent is a featured event card.
type PopularEvent struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle"`
	Date      string    `db:"date" json:"date"`
	Location  string    `db:"location" json:"location"`
	Image     string    `db:"image" json:"image"`
	Size      string    `db:"size" json:"size"`
	Speed     string    `db:"speed" json:"speed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GridEvent is an event shown in the events grid.
type GridEvent struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Category  string    `db:"category" json:"category"`
	Date      string    `db:"date" json:"date"`
	Location  string    `db:"location" json:"location"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WisataHero is a hero image of the tourism section.
type WisataHero struct {
	ID          int64     `db:"id" json:"id"`
	SectionName string    `db:"section_name" json:"section_name"`
	Image       string    `db:"image" json:"image"`
	Caption     string    `db:"caption" json:"caption"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// WisataCard is a destination card. Cards with a StaticKey are fixed
// slots of the landing layout and are upserted by key.
type WisataCard struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Image     string    `db:"image" json:"image"`
	StaticKey *string   `db:"static_key" json:"static_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WisataPage is a tourism detail article.
type WisataPage struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Slug       string    `db:"slug" json:"slug"`
	Category   string    `db:"category" json:"category"`
	CoverImage string    `db:"cover_image" json:"cover_image"`
	Content    string    `db:"content" json:"content"`
	Lat        *float64  `db:"lat" json:"lat"`
	Lng        *float64  `db:"lng" json:"lng"`
	Revision   int64     `db:"revision" json:"revision"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Activity is a things-to-do entry. DetailSlug names the jelajahi page
// holding its article.
type Activity struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Subtitle    string    `db:"subtitle" json:"subtitle"`
	Description string    `db:"description" json:"description"`
	Image       string    `db:"image" json:"image"`
	DetailSlug  string    `db:"detail_slug" json:"detail_slug"`
	OrderIndex  int       `db:"order_index" json:"order_index"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Hero is the banner of a top-level site page, keyed by page name.
type Hero struct {
	ID        int64     `db:"id" json:"id"`
	Page      string    `db:"page" json:"page"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle"`
	Image     string    `db:"image" json:"image"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Admin is a CMS administrator account.
type Admin struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Avatar    string    `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Summary holds the dashboard counters.
type Summary struct {
	JelajahiCategories int64 `db:"jelajahi_categories" json:"jelajahi_categories"`
	JelajahiPages      int64 `db:"jelajahi_pages" json:"jelajahi_pages"`
	KulinerCategories  int64 `db:"kuliner_categories" json:"kuliner_categories"`
	KulinerItems       int64 `db:"kuliner_items" json:"kuliner_items"`
	Events             int64 `db:"events" json:"events"`
	HomeVideos         int64 `db:"home_videos" json:"home_videos"`
	WisataPages        int64 `db:"wisata_pages" json:"wisata_pages"`
	Activities         int64 `db:"activities" json:"activities"`
}
