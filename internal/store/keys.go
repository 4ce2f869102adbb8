package store

const (
	KeyAccount   = "user:%s"
	KeyHistory   = "user:%s:history"
	KeyGames     = "user:%s:games"
	KeyReferrals = "user:%s:referrals"
	KeyRanking   = "ranking"

	DefaultRankingLimit = 50
)
