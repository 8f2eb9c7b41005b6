package main

import "github.com/iwtcode/mechanismAdapter/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
