package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	en := language.AmericanEnglish
	pt := language.BrazilianPortuguese

	for _, entry := range []struct {
		key string
		en  string
		pt  string
	}{
		{"menu.file", "File", "Arquivo"},
		{"menu.edit", "Edit", "Editar"},
		{"menu.tools", "Tools", "Ferramentas"},
		{"menu.management", "Management", "Gerenciamento"},
		{"menu.help", "Help", "Ajuda"},
		{"browser.title", "pgconsole", "pgconsole"},
		{"browser.signed_in_as", "Signed in as %s", "Conectado como %s"},
		{"browser.sign_out", "Sign out", "Sair"},
		{"login.title", "Sign In | pgconsole", "Entrar | pgconsole"},
		{"login.heading", "Sign in to pgconsole", "Entre no pgconsole"},
		{"login.email", "Email address", "Endereço de email"},
		{"login.password", "Password", "Senha"},
		{"login.submit", "Login", "Entrar"},
		{"error.login.invalid", "Incorrect email or password.", "Email ou senha incorretos."},
		{"error.login.required", "Email and password are required.", "Email e senha são obrigatórios."},
		{"error.page.title", "Error %d | pgconsole", "Erro %d | pgconsole"},
		{"error.page.back", "Back to the browser", "Voltar ao navegador"},
		{"error.http.404", "The requested page was not found.", "A página solicitada não foi encontrada."},
		{"error.http.500", "Something went wrong while building this page.", "Algo deu errado ao montar esta página."},
		{"error.http.503", "The service is temporarily unavailable.", "O serviço está temporariamente indisponível."},
	} {
		_ = message.SetString(en, entry.key, entry.en)
		_ = message.SetString(pt, entry.key, entry.pt)
	}
}
