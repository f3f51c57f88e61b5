package consts

const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformTwitch    = "twitch"
)

const (
	AccountKindSocial       = "social"
	AccountKindMonetization = "monetization"
)

const (
	CreatorStatusNormal   = 1
	CreatorStatusDisabled = 2
)

const (
	DefaultTopContentLimit = 5
)
