package contracts

// VotingABIJSON describes the proposal/voting ledger (SimpleVoting).
//
// Solidity:
//
//	function createProposal(string _description)          // onlyOwner
//	function vote(uint256 _proposalId)
//	function getProposal(uint256 _proposalId) view returns (string description, uint256 voteCount)
//	function proposalCount() view returns (uint256)
//	function hasVoted(address, uint256) view returns (bool)
//	function owner() view returns (address)
//	event ProposalCreated(uint256 proposalId, string description)
//	event VoteCast(address voter, uint256 proposalId)
const VotingABIJSON = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[]},
  {"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[{"name":"_description","type":"string"}],"outputs":[]},
  {"type":"function","name":"vote","stateMutability":"nonpayable","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getProposal","stateMutability":"view","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[{"name":"description","type":"string"},{"name":"voteCount","type":"uint256"}]},
  {"type":"function","name":"proposalCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"hasVoted","stateMutability":"view","inputs":[{"name":"","type":"address"},{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":false},{"name":"description","type":"string","indexed":false}]},
  {"type":"event","name":"VoteCast","anonymous":false,"inputs":[{"name":"voter","type":"address","indexed":false},{"name":"proposalId","type":"uint256","indexed":false}]},
  {"type":"error","name":"NotOwner","inputs":[{"name":"caller","type":"address"}]},
  {"type":"error","name":"AlreadyVoted","inputs":[{"name":"voter","type":"address"},{"name":"proposalId","type":"uint256"}]},
  {"type":"error","name":"ProposalNotFound","inputs":[{"name":"proposalId","type":"uint256"}]}
]`

// WeightedVotingABIJSON is the reputation-weighted variant of the voting ledger.
// Its constructor takes the reputation ledger address and getProposal also
// returns the weighted vote count.
const WeightedVotingABIJSON = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_reputationSystem","type":"address"}]},
  {"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[{"name":"_description","type":"string"}],"outputs":[]},
  {"type":"function","name":"vote","stateMutability":"nonpayable","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getProposal","stateMutability":"view","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[{"name":"description","type":"string"},{"name":"voteCount","type":"uint256"},{"name":"weightedVoteCount","type":"uint256"}]},
  {"type":"function","name":"proposalCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"hasVoted","stateMutability":"view","inputs":[{"name":"","type":"address"},{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":false},{"name":"description","type":"string","indexed":false}]},
  {"type":"event","name":"VoteCast","anonymous":false,"inputs":[{"name":"voter","type":"address","indexed":false},{"name":"proposalId","type":"uint256","indexed":false}]},
  {"type":"error","name":"NotOwner","inputs":[{"name":"caller","type":"address"}]},
  {"type":"error","name":"AlreadyVoted","inputs":[{"name":"voter","type":"address"},{"name":"proposalId","type":"uint256"}]},
  {"type":"error","name":"ProposalNotFound","inputs":[{"name":"proposalId","type":"uint256"}]}
]`
