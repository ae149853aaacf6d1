package constants

// 文章状态常量
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// 编辑角色常量
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// 异步任务常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskContactNotify   = "contact:notify"
	TaskWaitlistWelcome = "waitlist:welcome"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneContact  = "contact"
	CaptchaSceneWaitlist = "waitlist"
)

// 联系表单可选服务
var ContactServiceOptions = []string{
	"Digital Investigations",
	"Threat Intelligence",
	"Digital Footprint Removal",
	"Digital Asset Recovery",
	"Security Consultation",
	"Emergency Response",
}

// 候补名单可选用途
var WaitlistUseCaseOptions = []string{
	"AI agent integration",
	"Trading / bots",
	"Personal",
	"Product embedding",
	"Other (please specify below)",
}

// 缓存键常量
const (
	CachePublicPostsVersion = "posts:public:version"
)
