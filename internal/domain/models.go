// Package domain defines the persistence models for users, messages,
// follower edges, and the simulator's latest-command counter. These types
// are mapped with GORM and form the core data layer of MiniTwit.
package domain

// User is a registered account. Username and email are unique; the
// credential is stored only as a hash.
//
// Fields:
//   - UserID: auto-increment primary key (column user_id).
//   - Username: unique login name, also used in profile URLs.
//   - Email: unique address; used for gravatar images.
//   - PwHash: credential hash produced by the auth package.
type User struct {
	UserID   uint   `json:"user_id"  gorm:"column:user_id;primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email    string `json:"email"    gorm:"type:varchar(120);not null;uniqueIndex:ux_users_email"`
	PwHash   string `json:"-"        gorm:"column:pw_hash;type:varchar(255);not null"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Message is a single post. It is immutable after creation.
//
// Fields:
//   - MessageID: auto-increment primary key (column message_id).
//   - AuthorID: foreign key to the posting user (indexed).
//   - Text: non-empty body.
//   - PubDate: server-assigned unix timestamp in seconds (indexed for ordering).
//   - Flagged: moderation marker; 0 means visible.
//   - Author: FK association to users.
type Message struct {
	MessageID uint   `json:"message_id" gorm:"column:message_id;primaryKey;autoIncrement"`
	AuthorID  uint   `json:"author_id"  gorm:"column:author_id;not null;index:idx_messages_author"`
	Text      string `json:"text"       gorm:"type:text;not null"`
	PubDate   int64  `json:"pub_date"   gorm:"column:pub_date;not null;index:idx_messages_pub_date"`
	Flagged   int    `json:"flagged"    gorm:"not null;default:0"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Follower is a directed edge: WhoID follows WhomID. The composite primary
// key allows at most one edge per ordered pair.
type Follower struct {
	WhoID  uint `json:"who_id"  gorm:"column:who_id;primaryKey;autoIncrement:false"`
	WhomID uint `json:"whom_id" gorm:"column:whom_id;primaryKey;autoIncrement:false;index:idx_followers_whom"`

	Who  User `json:"-" gorm:"foreignKey:WhoID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Whom User `json:"-" gorm:"foreignKey:WhomID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Follower.
func (Follower) TableName() string { return "followers" }

// LatestID is the primary key of the single Latest row.
const LatestID = 1

// Latest holds the highest command sequence number reported by the
// simulator. There is at most one row, with ID == LatestID.
type Latest struct {
	ID    uint  `json:"-"      gorm:"primaryKey;autoIncrement:false"`
	Value int64 `json:"latest" gorm:"not null"`
}

// TableName returns the database table name for Latest.
func (Latest) TableName() string { return "latest" }
