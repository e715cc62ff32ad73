package media

import _ "embed"

// DefaultAvatarContentType is the content type of DefaultAvatar.
const DefaultAvatarContentType = "image/png"

// DefaultAvatar is served for users who never uploaded an avatar.
//
//go:embed default_avatar.png
var DefaultAvatar []byte
