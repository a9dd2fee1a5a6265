package contracts

// ReputationABIJSON describes the optional reputation ledger (ReputationSystem).
//
// Solidity:
//
//	function recordVote(address user)                      // authorized contracts only
//	function getUserReputation(address user) view returns (uint256 score, uint256 totalVotes,
//	    uint256 consecutiveVotes, uint256 achievementLevel, uint256 votingWeight, bool isActive)
//	function getVotingWeight(address user) view returns (uint256)
//	function hasBadge(address user, uint256 badgeId) view returns (bool)
//	function getUserBadges(address user) view returns (uint256[])
//	function authorizeContract(address contractAddress, bool authorized)  // onlyOwner
//	function owner() view returns (address)
const ReputationABIJSON = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[]},
  {"type":"function","name":"recordVote","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[]},
  {"type":"function","name":"getUserReputation","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"score","type":"uint256"},{"name":"totalVotes","type":"uint256"},{"name":"consecutiveVotes","type":"uint256"},{"name":"achievementLevel","type":"uint256"},{"name":"votingWeight","type":"uint256"},{"name":"isActive","type":"bool"}]},
  {"type":"function","name":"getVotingWeight","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"hasBadge","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"badgeId","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"getUserBadges","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"authorizeContract","stateMutability":"nonpayable","inputs":[{"name":"contractAddress","type":"address"},{"name":"authorized","type":"bool"}],"outputs":[]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"ReputationUpdated","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"newScore","type":"uint256","indexed":false},{"name":"totalVotes","type":"uint256","indexed":false}]},
  {"type":"event","name":"BadgeEarned","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"badgeId","type":"uint256","indexed":false}]},
  {"type":"error","name":"UnauthorizedCaller","inputs":[{"name":"caller","type":"address"}]}
]`

// Badge ids issued by the reputation ledger
const (
	BadgeFirstVote    = 0
	BadgeTenVotes     = 1
	BadgeStreakFive   = 2
	BadgeFiftyVotes   = 3
	BadgeHundredVotes = 4
)
