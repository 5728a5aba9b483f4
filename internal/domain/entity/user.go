package entity

type User struct {
	ID       string `json:"id" firestore:"-"`
	Nome     string `json:"nome" firestore:"nome"`
	Email    string `json:"email,omitempty" firestore:"email,omitempty"`
	Telefone string `json:"telefone,omitempty" firestore:"telefone,omitempty"`
	Foto     string `json:"foto,omitempty" firestore:"foto,omitempty"`
}
