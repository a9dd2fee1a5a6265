package contracts

// Deployed contract addresses (rewritten by `votechain update-addresses` after deployment)
const (
	VotingContractAddress = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	TokenContractAddress  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)
