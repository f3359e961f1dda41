package directory

// Account учетная запись из каталога
type Account struct {
	ID   int64  `json:"id"`
	Role string `json:"role"` // client | shop | rider | admin
}
