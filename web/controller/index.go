package controller

import (
	"errors"
	"net/http"

	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/service"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

// IndexController handles the login, registration and logout routes.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
	g.POST("/register", a.register)
}

// index shows the login page, or redirects straight to the chat when the
// session is still valid so a reload never re-prompts credentials.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "panel/")
		return
	}
	html(c, "login.html", "Tatar SMS", nil)
}

// login authenticates the user and creates the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Неверные данные формы")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, "Введите имя пользователя")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "Введите пароль")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("wrong username or password for \"%s\", IP: \"%s\"", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, "Неверный логин или пароль!")
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}

	session.SetMaxAge(c, sessionMaxAge*60)
	session.SetLoginUser(c, user)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session: ", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, "Вход выполнен!", nil)
}

// register creates a new account. The new user still logs in through the
// login form afterwards; no session is created here.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Неверные данные формы")
		return
	}
	if form.Password != form.Confirm {
		pureJsonMsg(c, http.StatusOK, false, "Пароли не совпадают!")
		return
	}

	user, err := a.userService.CreateUser(form.Username, form.Password)
	if errors.Is(err, service.ErrUserExists) {
		pureJsonMsg(c, http.StatusOK, false, "Это имя уже используется!")
		return
	} else if errors.Is(err, service.ErrEmptyUsername) {
		pureJsonMsg(c, http.StatusOK, false, "Введите имя пользователя")
		return
	} else if err != nil {
		jsonMsg(c, "Регистрация не удалась", err)
		return
	}

	logger.Infof("new user %s registered, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, "Регистрация успешна!", nil)
}

// logout clears the session and redirects to the login page.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	session.ClearSession(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
