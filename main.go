// fluentwd waits until an element on a page satisfies a condition and
// exits 0 on success. Pages come from a running selenium server or from a
// local HTML file.
//
// Example:
//
//	fluentwd -selector "#status" -condition text -argument Ready \
//	    -seleniumServer http://localhost:4444/wd/hub
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	cm "github.com/lanseg/golang-commons/common"

	"fluentwd/conditions"
	"fluentwd/elements"
	"fluentwd/webdriver"
)

var logger = cm.NewLogger("main")

func newDriver(cfg *Config) (webdriver.Driver, error) {
	if file := orEmpty(cfg.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return webdriver.NewStaticDriver(string(data))
	}
	if server := orEmpty(cfg.Server); server != "" {
		browser := orEmpty(cfg.Browser)
		if browser == "" {
			browser = "firefox"
		}
		return webdriver.Connect(server, browser).Get()
	}
	return nil, fmt.Errorf("either -htmlFile or -seleniumServer is required")
}

func elementCondition(name string, argument string) (conditions.ElementCondition, error) {
	switch name {
	case "exist":
		return conditions.Exist(), nil
	case "visible":
		return conditions.Visible(), nil
	case "hidden":
		return conditions.Hidden(), nil
	case "enabled":
		return conditions.Enabled(), nil
	case "disabled":
		return conditions.Disabled(), nil
	case "selected":
		return conditions.Selected(), nil
	case "text":
		return conditions.Text(argument), nil
	case "exact-text":
		return conditions.ExactText(argument), nil
	case "css-class":
		return conditions.CssClass(argument), nil
	case "value":
		return conditions.Value(argument), nil
	}
	return nil, fmt.Errorf("unknown condition %q", name)
}

func collectionCondition(name string, argument string) (conditions.CollectionCondition, error) {
	size, err := strconv.Atoi(argument)
	if err != nil {
		return nil, fmt.Errorf("condition %q needs a numeric argument: %s", name, err)
	}
	switch name {
	case "size":
		return conditions.SizeEquals(size), nil
	case "size-at-least":
		return conditions.SizeAtLeast(size), nil
	}
	return nil, fmt.Errorf("unknown condition %q", name)
}

func main() {
	cfg, err := cm.GetConfig[Config](os.Args[1:], "config")
	if err != nil {
		logger.Errorf("Could not load config: %v", err)
		os.Exit(-1)
	}

	selector := orEmpty(cfg.Selector)
	if selector == "" {
		logger.Errorf("No selector provided")
		os.Exit(-1)
	}
	condName := orEmpty(cfg.Condition)
	if condName == "" {
		condName = "visible"
	}
	argument := orEmpty(cfg.Argument)

	waitCfg, err := cfg.waitConfig()
	if err != nil {
		logger.Errorf("Bad wait configuration: %s", err)
		os.Exit(-1)
	}

	driver, err := newDriver(cfg)
	if err != nil {
		logger.Errorf("Cannot create driver: %s", err)
		os.Exit(-1)
	}

	opts := []elements.Option{
		elements.WithTimeout(waitCfg.Timeout),
		elements.WithPollInterval(waitCfg.PollInterval),
	}

	ctx := context.Background()
	if condName == "size" || condName == "size-at-least" {
		cond, err := collectionCondition(condName, argument)
		if err != nil {
			logger.Errorf("%s", err)
			os.Exit(-1)
		}
		if err := elements.All(driver, selector, opts...).Should(ctx, cond); err != nil {
			logger.Errorf("%s", err)
			os.Exit(-1)
		}
		logger.Infof("Collection %q: %s", selector, cond.Name())
		return
	}

	cond, err := elementCondition(condName, argument)
	if err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}
	if err := elements.New(driver, selector, opts...).Should(ctx, cond); err != nil {
		logger.Errorf("%s", err)
		os.Exit(-1)
	}
	logger.Infof("Element %q: %s", selector, cond.Name())
}
