package constants

const (
	RegisterPath   = "/Register"   // 注册选手
	LoginPath      = "/Login"      // 登录
	LogoutPath     = "/Logout"     // 退出登录
	GetProfilePath = "/GetProfile" // 获取个人信息及排名

	UpdateProfilePath = "/UpdateProfile" // 修改姓名与学校
	RefreshTokenPath  = "/RefreshToken"  // 换发 access token
)

const (
	GetChallengeListPath = "/GetChallengeList" // 获取题目集合列表
)

const (
	SubmitSolutionPath      = "/SubmitSolution"      // 提交解答
	GetMySubmissionListPath = "/GetMySubmissionList" // 获取个人提交记录
)

const (
	GetLeaderboardPath    = "/GetLeaderboard"    // 获取排行榜
	ExportLeaderboardPath = "/ExportLeaderboard" // 导出排行榜
	LiveLeaderboardPath   = "/LiveLeaderboard"   // 排行榜实时推送(websocket)
)

const (
	GetBadgeCatalogPath = "/GetBadgeCatalog" // 获取徽章目录
	GetMyBadgesPath     = "/GetMyBadges"     // 获取个人徽章
)

const (
	GetNotificationListPath = "/GetNotificationList" // 获取通知列表
)

const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)
