package contracts

// TokenABIJSON describes the fungible-token ledger (SimpleToken).
//
// Solidity:
//
//	function name() view returns (string)
//	function symbol() view returns (string)
//	function decimals() view returns (uint8)
//	function totalSupply() view returns (uint256)
//	function balanceOf(address owner) view returns (uint256)
//	function mint(address to, uint256 amount)            // onlyOwner
//	function owner() view returns (address)
//	event Transfer(address indexed from, address indexed to, uint256 value)
//	error OwnableUnauthorizedAccount(address account)
const TokenABIJSON = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"initialSupply","type":"uint256"}]},
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
  {"type":"error","name":"OwnableUnauthorizedAccount","inputs":[{"name":"account","type":"address"}]}
]`
