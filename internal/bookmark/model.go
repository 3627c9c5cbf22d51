package bookmark

import (
	"time"

	"github.com/lib/pq"
)

// Bookmark is a saved link plus its enrichment results. Tags live in a
// Postgres text[] column; Order is the user-controlled display rank,
// distinct from creation time.
type Bookmark struct {
	ID      uint64         `gorm:"primaryKey" json:"id"`
	UserID  uint64         `gorm:"index;not null" json:"userId"`
	URL     string         `gorm:"not null" json:"url"`
	Title   string         `gorm:"not null" json:"title"`
	Favicon string         `gorm:"not null;default:''" json:"favicon"`
	Summary string         `gorm:"type:text;not null;default:''" json:"summary"`
	Tags    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`
	Order   int            `gorm:"column:order;not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}
