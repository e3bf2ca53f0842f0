package entity

// SwitchPhase enumerates the states of the wallet/network reconciliation machine.
type SwitchPhase int

const (
	// PhaseDisconnected means no wallet is connected.
	PhaseDisconnected SwitchPhase = iota
	// PhaseConnectedCorrectNetwork means the wallet chain id matches the required chain id.
	PhaseConnectedCorrectNetwork
	// PhaseConnectedWrongNetwork means the wallet is connected to some other chain.
	PhaseConnectedWrongNetwork
	// PhaseSwitching means a switch or add-network request is outstanding.
	PhaseSwitching
)

// String implements fmt.Stringer for logging and status responses.
func (p SwitchPhase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnectedCorrectNetwork:
		return "connected_correct_network"
	case PhaseConnectedWrongNetwork:
		return "connected_wrong_network"
	case PhaseSwitching:
		return "switching"
	default:
		return "unknown"
	}
}

// SwitchState is a snapshot of the reconciliation machine, safe to hand out to callers.
type SwitchState struct {
	Phase            SwitchPhase `json:"phase"`
	IsConnected      bool        `json:"isConnected"`
	IsCorrectNetwork bool        `json:"isCorrectNetwork"`
	IsSwitching      bool        `json:"isSwitching"`
	WalletChainID    uint64      `json:"walletChainId"`
	RequiredChainID  uint64      `json:"requiredChainId"`
	LastError        string      `json:"lastError,omitempty"`
}
