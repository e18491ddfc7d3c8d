package achievement

// FirstSolveBadgeID 首次解题徽章
const FirstSolveBadgeID = "first-solve"

// DefaultRules 默认徽章目录, 配置中未声明 badges 时使用
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{ID: FirstSolveBadgeID, Name: "First Steps", Description: "Solve your first problem",
			Icon: "footprints", Category: string(CategoryMilestone), Rarity: "common",
			Kind: KindMilestone, Threshold: 1},
		{ID: "problem-solver", Name: "Problem Solver", Description: "Solve 5 different problems",
			Icon: "puzzle", Category: string(CategoryMilestone), Rarity: "rare",
			Kind: KindMilestone, Threshold: 5},
		{ID: "code-master", Name: "Code Master", Description: "Solve 10 different problems",
			Icon: "crown", Category: string(CategoryMilestone), Rarity: "epic",
			Kind: KindMilestone, Threshold: 10},
		{ID: "crypto-master", Name: "Crypto Master", Description: "Solve every cryptography challenge",
			Icon: "lock", Category: string(CategoryMastery), Rarity: "epic",
			Kind: KindCategoryCompletion, ChallengeSet: "cryptography"},
		{ID: "data-structure-guru", Name: "Data Structure Guru", Description: "Solve every data-structures challenge",
			Icon: "tree", Category: string(CategoryMastery), Rarity: "epic",
			Kind: KindCategoryCompletion, ChallengeSet: "data-structures"},
		{ID: "bug-hunter", Name: "Bug Hunter", Description: "Fix every bug in the debugging set",
			Icon: "bug", Category: string(CategoryMastery), Rarity: "rare",
			Kind: KindCategoryCompletion, ChallengeSet: "debugging"},
		{ID: "change-maker", Name: "Change Maker", Description: "Solve every social-impact challenge",
			Icon: "globe", Category: string(CategoryMastery), Rarity: "legendary",
			Kind: KindCategoryCompletion, ChallengeSet: "social-impact"},
		{ID: "two-sum-solver", Name: "Classic", Description: "Solve Two Sum",
			Icon: "plus", Category: string(CategoryAchievement), Rarity: "common",
			Kind: KindSingleProblem, ProblemID: "two-sum"},
		{ID: "persistent", Name: "Persistent", Description: "Make 10 submissions",
			Icon: "repeat", Category: string(CategoryDedication), Rarity: "common",
			Kind: KindVolume, Threshold: 10},
		{ID: "marathon-runner", Name: "Marathon Runner", Description: "Make 50 submissions",
			Icon: "running", Category: string(CategoryDedication), Rarity: "rare",
			Kind: KindVolume, Threshold: 50},
		{ID: "perfectionist", Name: "Perfectionist", Description: "Solve a problem on the first attempt",
			Icon: "target", Category: string(CategorySkill), Rarity: "rare",
			Kind: KindFirstAttempt},
		{ID: "polyglot", Name: "Polyglot", Description: "Submit in 3 different languages",
			Icon: "languages", Category: string(CategorySkill), Rarity: "rare",
			Kind: KindPolyglot, Threshold: 3},
		{ID: "early-bird", Name: "Early Bird", Description: "Submit within the first 30 minutes of the competition",
			Icon: "sunrise", Category: string(CategorySpeed), Rarity: "common",
			Kind: KindTimingWindow, WindowFromMinutes: 0, WindowToMinutes: 30, AnyVerdict: true},
		{ID: "speed-demon", Name: "Speed Demon", Description: "Get accepted within the first 10 minutes of the competition",
			Icon: "zap", Category: string(CategorySpeed), Rarity: "legendary",
			Kind: KindTimingWindow, WindowFromMinutes: 0, WindowToMinutes: 10},
		{ID: "high-scorer", Name: "High Scorer", Description: "Reach 1000 points",
			Icon: "trophy", Category: string(CategoryAchievement), Rarity: "epic",
			Kind: KindScoreThreshold, Threshold: 1000},
	}
}
