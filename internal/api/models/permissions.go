package models

// Permission flag names seeded at startup.
const (
	PermUpdateProfile  = "UPDATE_PROFILE"
	PermCreateComic    = "CREATE_COMIC"
	PermUpdateComic    = "UPDATE_COMIC"
	PermDeleteComic    = "DELETE_COMIC"
	PermCreateChapter  = "CREATE_CHAPTER"
	PermUpdateChapter  = "UPDATE_CHAPTER"
	PermCreateTag      = "CREATE_TAG"
	PermCreateResource = "CREATE_RESOURCE"
)

// Seeded permission group names. Every signup lands in GroupUser.
const (
	GroupAdmin = "ADMIN"
	GroupUser  = "USER"
)

type PermissionGroup struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:permission_relationships;constraint:OnDelete:CASCADE;"`
}

func (PermissionGroup) TableName() string {
	return "permission_groups"
}

type Permission struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Permission) TableName() string {
	return "permissions"
}

// explicit join model so the relationship table carries its own id
type PermissionRelationship struct {
	ID                int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	PermissionGroupID int64 `json:"permission_group_id" gorm:"index;not null"`
	PermissionID      int64 `json:"permission_id" gorm:"index;not null"`
}

func (PermissionRelationship) TableName() string {
	return "permission_relationships"
}
